package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rekberhq/rekber/cmd/admin/internal/view"
	"github.com/rekberhq/rekber/internal/audit"
	auditStore "github.com/rekberhq/rekber/internal/audit/store"
	"github.com/rekberhq/rekber/internal/config"
	"github.com/rekberhq/rekber/internal/database"
	"github.com/rekberhq/rekber/internal/escrow"
	escrowStore "github.com/rekberhq/rekber/internal/escrow/store"
	"github.com/rekberhq/rekber/internal/notify"
	notifyStore "github.com/rekberhq/rekber/internal/notify/store"
	"github.com/rekberhq/rekber/internal/proof"
	proofStore "github.com/rekberhq/rekber/internal/proof/store"
	"github.com/rekberhq/rekber/internal/setting"
	settingStore "github.com/rekberhq/rekber/internal/setting/store"
)

type model struct {
	svc   *escrow.Service
	admin escrow.Actor

	currentView View

	verifications view.QueueModel
	disputes      view.QueueModel
	disbursements view.QueueModel
	refunds       view.QueueModel
	all           view.QueueModel
}

type View int

const (
	ViewMenu          View = 0
	ViewVerifications View = 1
	ViewDisputes      View = 2
	ViewDisbursements View = 3
	ViewRefunds       View = 4
	ViewAll           View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	adminID, err := uuid.Parse(cfg.Auth.AdminID)
	if err != nil {
		slog.Error("ADMIN_ID must be a valid UUID", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		settingSvc = setting.NewService(settingStore.New(db), cfg.Escrow.AdminFeeFallback)
		notifySvc  = notify.NewService(notifyStore.New(db))
		auditSvc   = audit.NewService(auditStore.New(db))
		proofSvc   = proof.NewService(proofStore.New(db))
	)

	dispatcher := escrow.NewDispatcher(notifySvc, auditSvc)
	go dispatcher.Run(context.Background())

	svc := escrow.NewService(escrowStore.New(db), settingSvc, proofSvc, dispatcher, nil).
		WithAutoCompleteWindow(cfg.Escrow.AutoCompleteAfter)

	admin := escrow.Actor{ID: adminID, Role: escrow.RoleAdmin}

	return model{
		svc:           svc,
		admin:         admin,
		currentView:   ViewMenu,
		verifications: view.NewQueueModel(svc, admin, view.QueueVerifications),
		disputes:      view.NewQueueModel(svc, admin, view.QueueDisputes),
		disbursements: view.NewQueueModel(svc, admin, view.QueueDisbursements),
		refunds:       view.NewQueueModel(svc, admin, view.QueueRefunds),
		all:           view.NewQueueModel(svc, admin, view.QueueAll),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewVerifications
				m.verifications = view.NewQueueModel(m.svc, m.admin, view.QueueVerifications)

				return m, m.verifications.Init()
			case "2":
				m.currentView = ViewDisputes
				m.disputes = view.NewQueueModel(m.svc, m.admin, view.QueueDisputes)

				return m, m.disputes.Init()
			case "3":
				m.currentView = ViewDisbursements
				m.disbursements = view.NewQueueModel(m.svc, m.admin, view.QueueDisbursements)

				return m, m.disbursements.Init()
			case "4":
				m.currentView = ViewRefunds
				m.refunds = view.NewQueueModel(m.svc, m.admin, view.QueueRefunds)

				return m, m.refunds.Init()
			case "5":
				m.currentView = ViewAll
				m.all = view.NewQueueModel(m.svc, m.admin, view.QueueAll)

				return m, m.all.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewVerifications:
		var newModel tea.Model
		newModel, cmd = m.verifications.Update(msg)
		m.verifications = newModel.(view.QueueModel)
	case ViewDisputes:
		var newModel tea.Model
		newModel, cmd = m.disputes.Update(msg)
		m.disputes = newModel.(view.QueueModel)
	case ViewDisbursements:
		var newModel tea.Model
		newModel, cmd = m.disbursements.Update(msg)
		m.disbursements = newModel.(view.QueueModel)
	case ViewRefunds:
		var newModel tea.Model
		newModel, cmd = m.refunds.Update(msg)
		m.refunds = newModel.(view.QueueModel)
	case ViewAll:
		var newModel tea.Model
		newModel, cmd = m.all.Update(msg)
		m.all = newModel.(view.QueueModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Rekber Admin Console\n\n" +
				"1. Payment Verifications\n" +
				"2. Disputes\n" +
				"3. Disbursements\n" +
				"4. Refunds\n" +
				"5. All Transactions\n\n" +
				"q. Quit",
		)
	case ViewVerifications:
		return m.verifications.View()
	case ViewDisputes:
		return m.disputes.View()
	case ViewDisbursements:
		return m.disbursements.View()
	case ViewRefunds:
		return m.refunds.View()
	case ViewAll:
		return m.all.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run admin console", "error", err)
		os.Exit(1)
	}
}
