package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rekberhq/rekber/internal/escrow"
)

// QueueKind selects which slice of the lifecycle a queue shows and which
// admin actions it offers on the selected row.
type QueueKind int

const (
	QueueVerifications QueueKind = iota
	QueueDisputes
	QueueDisbursements
	QueueRefunds
	QueueAll
)

type queueState int

const (
	queueStateBrowse queueState = iota
	queueStateForm
)

type QueueModel struct {
	CommonModel
	svc   *escrow.Service
	admin escrow.Actor
	kind  QueueKind

	state queueState
	table table.Model
	txs   []*escrow.Transaction
	form  *huh.Form

	pendingAction escrow.Action

	loading bool
	err     error
	status  string

	// Form bindings
	formReason   string
	formDecision string
	formConfirm  bool
}

func NewQueueModel(svc *escrow.Service, admin escrow.Actor, kind QueueKind) QueueModel {
	columns := []table.Column{
		{Title: "Code", Width: 20},
		{Title: "Status", Width: 16},
		{Title: "Amount", Width: 14},
		{Title: "Total", Width: 14},
		{Title: "Updated", Width: 12},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return QueueModel{
		svc:   svc,
		admin: admin,
		kind:  kind,
		table: t,
	}
}

func (m QueueModel) Title() string {
	switch m.kind {
	case QueueVerifications:
		return "Payment Verifications"
	case QueueDisputes:
		return "Disputes"
	case QueueDisbursements:
		return "Disbursements"
	case QueueRefunds:
		return "Refunds"
	}

	return "All Transactions"
}

func (m QueueModel) ShortHelp() string {
	if m.state == queueStateForm {
		return "Navigate form | Esc: cancel"
	}

	switch m.kind {
	case QueueVerifications:
		return "Esc: back | v: verify | x: reject | r: refresh"
	case QueueDisputes:
		return "Esc: back | s: resolve | r: refresh"
	case QueueDisbursements:
		return "Esc: back | b: disburse | r: refresh"
	case QueueRefunds:
		return "Esc: back | f: mark refunded | r: refresh"
	}

	return "Esc: back | r: refresh"
}

func (m QueueModel) statusFilter() *escrow.Status {
	var s escrow.Status

	switch m.kind {
	case QueueVerifications:
		s = escrow.StatusVerifying
	case QueueDisputes:
		s = escrow.StatusDisputed
	case QueueDisbursements:
		s = escrow.StatusCompleted
	case QueueRefunds:
		s = escrow.StatusRefundPending
	default:
		return nil
	}

	return &s
}

func (m QueueModel) Init() tea.Cmd {
	return m.loadQueueCmd()
}

func (m QueueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.err = nil
		m.refreshTable()

		return m, nil

	case actionResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%s: %s applied", msg.code, msg.action)
		}

		m.state = queueStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadQueueCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case queueStateBrowse:
		return m.updateBrowse(msg)
	case queueStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m QueueModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadQueueCmd()
		case "v":
			if m.kind == QueueVerifications {
				return m.confirmAction(escrow.ActionVerifyPayment, "Verify this payment?")
			}
		case "x":
			if m.kind == QueueVerifications {
				return m.rejectForm()
			}
		case "s":
			if m.kind == QueueDisputes {
				return m.resolveForm()
			}
		case "b":
			if m.kind == QueueDisbursements {
				return m.confirmAction(escrow.ActionDisburse, "Disburse funds to the seller?")
			}
		case "f":
			if m.kind == QueueRefunds {
				return m.confirmAction(escrow.ActionMarkRefunded, "Mark the buyer as refunded?")
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m QueueModel) selected() *escrow.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m QueueModel) confirmAction(action escrow.Action, prompt string) (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.pendingAction = action
	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(prompt).
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = queueStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m QueueModel) rejectForm() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.pendingAction = escrow.ActionRejectPayment
	m.formReason = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("reason").
				Title("Rejection reason").
				Value(&m.formReason).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("reason cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = queueStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m QueueModel) resolveForm() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.pendingAction = escrow.ActionResolveDispute
	m.formDecision = string(escrow.DecisionRefundBuyer)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("decision").
				Title("Ruling").
				Options(
					huh.NewOption("Refund the buyer", string(escrow.DecisionRefundBuyer)),
					huh.NewOption("Release funds to the seller", string(escrow.DecisionReleaseSeller)),
					huh.NewOption("Return the goods first", string(escrow.DecisionReturnGoods)),
				).
				Value(&m.formDecision),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = queueStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m QueueModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = queueStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.pendingAction != escrow.ActionRejectPayment &&
		m.pendingAction != escrow.ActionResolveDispute && !m.formConfirm {
		m.state = queueStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.applyCmd()
}

func (m QueueModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading queue...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Render(fmt.Sprintf("%s (%d)", m.Title(), len(m.txs)))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	if m.state == queueStateForm && m.form != nil {
		code := ""
		if tx := m.selected(); tx != nil {
			code = tx.TrxCode
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", code, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *QueueModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			tx.TrxCode,
			string(tx.Status),
			FormatRupiah(tx.Amount),
			FormatRupiah(tx.TotalTransfer),
			FormatDate(tx.UpdatedAt),
			tx.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadQueueMsg struct {
	txs []*escrow.Transaction
	err error
}

func (m QueueModel) loadQueueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.svc.List(ctx, escrow.ListFilter{Status: m.statusFilter()})

		return loadQueueMsg{txs: txs, err: err}
	}
}

type actionResultMsg struct {
	code   string
	action escrow.Action
	err    error
}

func (m QueueModel) applyCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	action := m.pendingAction
	in := escrow.Input{
		Reason:   m.formReason,
		Decision: escrow.Decision(m.formDecision),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.Apply(ctx, m.admin, tx.ID, action, in)

		return actionResultMsg{code: tx.TrxCode, action: action, err: err}
	}
}
