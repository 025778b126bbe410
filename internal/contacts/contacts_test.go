package contacts

import "testing"

func TestValidate(t *testing.T) {
	base := Contact{Name: "Jane Wanjiku", PhoneNumber: "+254712345678", DebtAmount: 2500, PaymentStatus: PaymentStatusOverdue}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid contact, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Contact)
	}{
		{"missing name", func(c *Contact) { c.Name = " " }},
		{"missing phone", func(c *Contact) { c.PhoneNumber = "" }},
		{"negative debt", func(c *Contact) { c.DebtAmount = -1 }},
		{"bad status", func(c *Contact) { c.PaymentStatus = "delinquent" }},
	}
	for _, tc := range cases {
		c := base
		tc.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestStatusBadge(t *testing.T) {
	c := Contact{PaymentStatus: PaymentStatusOverdue}
	if got := c.StatusBadge(); got != "OVERDUE" {
		t.Fatalf("badge = %q, want OVERDUE", got)
	}
}

func TestFormatDebtAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2500.00, "KSh 2,500"},
		{0, "KSh 0"},
		{999, "KSh 999"},
		{1000, "KSh 1,000"},
		{1234567, "KSh 1,234,567"},
		{2500.50, "KSh 2,500.50"},
		{-300, "-KSh 300"},
	}
	for _, tc := range cases {
		if got := FormatDebtAmount(tc.in); got != tc.want {
			t.Errorf("FormatDebtAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilter(t *testing.T) {
	list := []Contact{
		{ID: "1", Name: "Jane Wanjiku", PhoneNumber: "+254712345678", Email: "jane@example.com", PaymentStatus: PaymentStatusOverdue},
		{ID: "2", Name: "Otieno Omondi", PhoneNumber: "+254733000111", PaymentStatus: PaymentStatusPaid},
		{ID: "3", Name: "Amina Hassan", PhoneNumber: "+254700222333", Email: "amina@example.com", PaymentStatus: PaymentStatusOverdue},
	}

	got := Filter{Query: "jane"}.Apply(list)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("query jane: got %+v", got)
	}

	got = Filter{Query: "2547"}.Apply(list)
	if len(got) != 3 {
		t.Fatalf("phone substring: expected 3, got %d", len(got))
	}

	got = Filter{Status: PaymentStatusOverdue}.Apply(list)
	if len(got) != 2 {
		t.Fatalf("status filter: expected 2, got %d", len(got))
	}

	got = Filter{Query: "example.com", Status: PaymentStatusOverdue}.Apply(list)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("combined filter preserves order: got %+v", got)
	}
}
