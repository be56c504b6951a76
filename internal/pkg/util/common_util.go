package util

// PtrInt64 returns a pointer to i
func PtrInt64(i int64) *int64 {
	return &i
}

// PtrString returns nil for "", otherwise a pointer to s
func PtrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Int64OrZero dereferences p, nil counts as 0
func Int64OrZero(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
