package leave

type Status int

const (
	StatusAvailable Status = iota
	StatusExhausted
	StatusExcluded
	StatusOverdrawn
)

type RGB [3]int

type statusStyle struct {
	label string
	fill  RGB
	text  RGB
}

var statusStyles = map[Status]statusStyle{
	StatusAvailable: {label: "Tersedia", fill: RGB{220, 252, 231}, text: RGB{22, 101, 52}},
	StatusExhausted: {label: "Habis", fill: RGB{254, 242, 242}, text: RGB{153, 27, 27}},
	StatusExcluded:  {label: "Dikecualikan", fill: RGB{243, 244, 246}, text: RGB{107, 114, 128}},
	StatusOverdrawn: {label: "Terlebih", fill: RGB{254, 243, 199}, text: RGB{146, 64, 14}},
}

func (s Status) Label() string { return statusStyles[s].label }
func (s Status) Fill() RGB     { return statusStyles[s].fill }
func (s Status) Text() RGB     { return statusStyles[s].text }

// StatusFor derives the row status: excluded wins, then a positive balance is available,
// a negative one overdrawn, and zero exhausted.
func StatusFor(b Breakdown) Status {
	switch {
	case b.RoleExcluded:
		return StatusExcluded
	case b.Balance > 0:
		return StatusAvailable
	case b.Balance < 0:
		return StatusOverdrawn
	default:
		return StatusExhausted
	}
}

type Summary struct {
	Entitlement float64
	Taken       float64
	Balance     float64
}

// Summarize totals the breakdown, skipping role-excluded leave types.
func Summarize(rows []Breakdown) Summary {
	var s Summary
	for _, b := range rows {
		if b.RoleExcluded {
			continue
		}
		s.Entitlement += b.Entitlement
		s.Taken += b.Taken
		s.Balance += b.Balance
	}
	return s
}
