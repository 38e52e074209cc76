package model

// FilterOptionKind tags which shape a FilterOption carries.
type FilterOptionKind int

const (
	// FilterLabel is a bare label that doubles as its own key.
	FilterLabel FilterOptionKind = iota
	// FilterLabeledValue carries a display label, a key and an icon token.
	FilterLabeledValue
)

// FilterOption is one selectable pill in a filter bar.
type FilterOption struct {
	Kind  FilterOptionKind
	Label string
	Value string
	Icon  string
}

// LabelOption builds a bare-label option.
func LabelOption(label string) FilterOption {
	return FilterOption{Kind: FilterLabel, Label: label}
}

// ValueOption builds a labeled option with a distinct key.
func ValueOption(label, value, icon string) FilterOption {
	return FilterOption{Kind: FilterLabeledValue, Label: label, Value: value, Icon: icon}
}

// Key returns the value a selection of this option stands for.
func (o FilterOption) Key() string {
	switch o.Kind {
	case FilterLabeledValue:
		return o.Value
	default:
		return o.Label
	}
}

// Budget filter keys.
const (
	BudgetFilterActive   = "active"
	BudgetFilterExceeded = "exceeded"
	BudgetFilterCurrent  = "current"
)

// BudgetFilterOptions are the pills shown above the budget list.
var BudgetFilterOptions = []FilterOption{
	ValueOption("Active", BudgetFilterActive, "check"),
	ValueOption("Exceeded", BudgetFilterExceeded, "alert"),
	ValueOption("This period", BudgetFilterCurrent, "calendar"),
}

// Status and type filter keys for transaction lists.
const (
	FilterAll = "all"
)

// StatusFilterOptions are the status pills on the calendar and list views.
var StatusFilterOptions = []FilterOption{
	ValueOption("All", FilterAll, ""),
	ValueOption("Paid", string(Paid), "check"),
	ValueOption("Pending", string(Pending), "clock"),
}

// TypeFilterOptions are the type pills on the calendar and list views.
var TypeFilterOptions = []FilterOption{
	ValueOption("All", FilterAll, ""),
	ValueOption("Income", string(Income), "arrow-up"),
	ValueOption("Expense", string(Expense), "arrow-down"),
}
