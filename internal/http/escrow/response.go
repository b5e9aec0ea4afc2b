package escrow

import (
	"time"

	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/audit"
	"github.com/rekberhq/rekber/internal/escrow"
	"github.com/rekberhq/rekber/internal/proof"
)

type transactionResponse struct {
	ID                uuid.UUID     `json:"id"`
	TrxCode           string        `json:"trx_code"`
	BuyerID           uuid.UUID     `json:"buyer_id"`
	SellerID          uuid.UUID     `json:"seller_id"`
	Amount            int64         `json:"amount"`
	AdminFee          int64         `json:"admin_fee"`
	TotalTransfer     int64         `json:"total_transfer"`
	Description       string        `json:"description,omitempty"`
	Status            escrow.Status `json:"status"`
	AutoCompleteAt    *time.Time    `json:"auto_complete_at,omitempty"`
	TrackingReference string        `json:"tracking_reference,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type detailResponse struct {
	transactionResponse
	Proofs   []proofResponse   `json:"proofs"`
	Messages []messageResponse `json:"messages"`
}

type proofResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      proof.Type `json:"type"`
	ImageURL  string     `json:"image_url"`
	CreatedAt time.Time  `json:"created_at"`
}

type messageResponse struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	Text      string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

// trackResponse is the public surface: no party identifiers.
type trackResponse struct {
	TrxCode       string        `json:"trx_code"`
	Status        escrow.Status `json:"status"`
	TotalTransfer int64         `json:"total_transfer"`
	CreatedAt     time.Time     `json:"created_at"`
}

func toResponse(tx *escrow.Transaction) transactionResponse {
	return transactionResponse{
		ID:                tx.ID,
		TrxCode:           tx.TrxCode,
		BuyerID:           tx.BuyerID,
		SellerID:          tx.SellerID,
		Amount:            tx.Amount,
		AdminFee:          tx.AdminFee,
		TotalTransfer:     tx.TotalTransfer,
		Description:       tx.Description,
		Status:            tx.Status,
		AutoCompleteAt:    tx.AutoCompleteAt,
		TrackingReference: tx.TrackingReference,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

func toResponseList(txs []*escrow.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toDetailResponse(tx *escrow.Transaction, proofs []*proof.Proof, msgs []*audit.Message) detailResponse {
	resp := detailResponse{
		transactionResponse: toResponse(tx),
		Proofs:              make([]proofResponse, 0, len(proofs)),
		Messages:            make([]messageResponse, 0, len(msgs)),
	}

	for _, p := range proofs {
		resp.Proofs = append(resp.Proofs, proofResponse{
			ID:        p.ID,
			Type:      p.Type,
			ImageURL:  p.ImageURL,
			CreatedAt: p.CreatedAt,
		})
	}

	for _, m := range msgs {
		resp.Messages = append(resp.Messages, messageResponse{
			ID:        m.ID,
			AuthorID:  m.AuthorID,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		})
	}

	return resp
}

func toTrackResponse(tx *escrow.Transaction) trackResponse {
	return trackResponse{
		TrxCode:       tx.TrxCode,
		Status:        tx.Status,
		TotalTransfer: tx.TotalTransfer,
		CreatedAt:     tx.CreatedAt,
	}
}
