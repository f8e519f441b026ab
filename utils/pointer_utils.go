package utils

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// NonEmptyPtr returns nil for nil or empty input and a copy otherwise
func NonEmptyPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// SameStringPtr reports whether two optional strings hold the same value
func SameStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
