package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/tui/components"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// TransactionValues holds what the add-transaction form collects.
type TransactionValues struct {
	Description string
	Amount      string
	Date        string
	Type        string
	Category    string
	Status      string
}

// NewTransactionValues returns form defaults: an expense dated today.
func NewTransactionValues(today time.Time) *TransactionValues {
	return &TransactionValues{
		Date:   model.DateOf(today).String(),
		Type:   string(model.Expense),
		Status: string(model.Paid),
	}
}

// Transaction converts the collected text into a record ready to create.
func (v TransactionValues) Transaction() (model.Transaction, error) {
	d, err := model.ParseDate(v.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	typ, err := model.ParseTxType(v.Type)
	if err != nil {
		return model.Transaction{}, err
	}
	st, err := model.ParseTxStatus(v.Status)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		Description: strings.TrimSpace(v.Description),
		Amount:      model.ParseMagnitude(v.Amount),
		Date:        d,
		Category:    strings.TrimSpace(v.Category),
		Type:        typ,
		Status:      st,
	}, nil
}

// categoryOptions lists the categories of kind, falling back to "Other"
// when none exist yet.
func categoryOptions(categories []model.Category, kind string) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, c := range categories {
		if string(c.Kind) == kind {
			opts = append(opts, huh.NewOption(c.Name, c.Name))
		}
	}
	if len(opts) == 0 {
		opts = append(opts, huh.NewOption("Other", "Other"))
	}
	return opts
}

// NewTransactionForm builds the add-transaction form bound to vals. The
// category list follows the selected type.
func NewTransactionForm(vals *TransactionValues, categories []model.Category) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&vals.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount").
				Placeholder("55,90").
				Value(&vals.Amount).
				Validate(func(s string) error {
					if !model.ParseMagnitude(s).IsPositive() {
						return errors.New("enter an amount above zero")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateLayout).
				Value(&vals.Date).
				Validate(func(s string) error {
					_, err := model.ParseDate(s)
					if err != nil {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&vals.Type),
			huh.NewSelect[string]().
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return categoryOptions(categories, vals.Type)
				}, &vals.Type).
				Value(&vals.Category),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Paid", string(model.Paid)),
					huh.NewOption("Pending", string(model.Pending)),
				).
				Value(&vals.Status),
		),
	).WithTheme(huh.ThemeDracula())
}

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	a.addVals = NewTransactionValues(a.now())
	a.addForm = NewTransactionForm(a.addVals, a.dataset().Categories).
		WithWidth(min(a.width, 72)).
		WithShowHelp(true)
	a.flash = ""
	return a, a.addForm.Init()
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.addForm, a.addVals = nil, nil
		return a, nil
	}

	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	switch a.addForm.State {
	case huh.StateCompleted:
		vals := *a.addVals
		a.addForm, a.addVals = nil, nil
		tx, err := vals.Transaction()
		if err != nil {
			a.flash = "Could not save: " + err.Error()
			return a, nil
		}
		return a, createTxCmd(a.gateway(), tx)
	case huh.StateAborted:
		a.addForm, a.addVals = nil, nil
		return a, nil
	}
	return a, cmd
}

func createTxCmd(gw gateway.Gateway, tx model.Transaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		created, err := gw.CreateTransaction(ctx, tx)
		if err != nil {
			return CreatedMsg{Tx: tx, Err: err}
		}
		return CreatedMsg{Tx: created}
	}
}

func (a App) renderAddForm(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := a.addForm.View() + "\n" + muted.Render("[enter] next  [esc] cancel")
	w := min(cw, 80)
	card := components.ContentCard("New transaction", body, w)
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, card, lipgloss.WithWhitespaceBackground(t.Background))
}
