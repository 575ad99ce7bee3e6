package cachekit

// ValidateCapacity rejects a zero entry-count capacity.
func ValidateCapacity(field string, capacity uint32) error {
	if capacity == 0 {
		return NewConfigError(field, "must be non-zero")
	}
	return nil
}

// ValidateSegments rejects a segment count greater than the total capacity.
// A zero segment count means "auto" and is always accepted.
func ValidateSegments(segments, capacity uint32) error {
	if segments == 0 {
		return nil
	}
	if segments > capacity {
		return NewConfigError("Segments", "must not exceed Capacity")
	}
	return nil
}

// ValidateProtectedCapacity rejects an SLRU protected capacity that is zero
// or that exceeds the total capacity.
func ValidateProtectedCapacity(protected, capacity uint32) error {
	if protected == 0 {
		return NewConfigError("ProtectedCapacity", "must be non-zero")
	}
	if protected > capacity {
		return NewConfigError("ProtectedCapacity", "must not exceed Capacity")
	}
	return nil
}
