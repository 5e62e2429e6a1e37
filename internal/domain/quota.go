package domain

// QuotaUsage is a user's generation count for the current day against the
// daily limit of their plan. A Limit of 0 means unlimited.
type QuotaUsage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// Allowed reports whether the usage is within the limit.
func (u QuotaUsage) Allowed() bool {
	return u.Limit == 0 || u.Used <= u.Limit
}

// Remaining returns the generations left today, or -1 when unlimited.
func (u QuotaUsage) Remaining() int {
	if u.Limit == 0 {
		return -1
	}
	return max(u.Limit-u.Used, 0)
}
