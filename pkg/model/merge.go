package model

// mergeBy composes base and overlay. Each overlay element is matched against the
// accumulated result (so duplicates inside overlay collapse as well); a match is
// merged in place, anything else is appended. The returned slice never shares
// its backing array with base.
func mergeBy[T any](base, overlay []T, match func(b, o T) (bool, error), merge func(b, o T) error) ([]T, error) {
	if len(overlay) == 0 {
		return base, nil
	}

	result := make([]T, len(base), len(base)+len(overlay))
	copy(result, base)

	for _, o := range overlay {
		merged := false
		for _, b := range result {
			ok, err := match(b, o)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if err := merge(b, o); err != nil {
				return nil, err
			}
			merged = true
			break
		}
		if !merged {
			result = append(result, o)
		}
	}
	return result, nil
}

// MergeList performs an additive merge of two homogeneous lists.
// Overlay elements mergeable with an existing element are merged into it;
// the rest are appended. Base elements without a counterpart are retained.
func MergeList[T Mergeable[T]](base, overlay []T) []T {
	result, _ := mergeBy(base, overlay,
		func(b, o T) (bool, error) { return b.IsMergeableWith(o), nil },
		func(b, o T) error {
			b.Merge(o)
			return nil
		},
	)
	return result
}

// ReplaceList performs a replace merge: a non-empty overlay wholly replaces base.
// An empty overlay leaves base untouched.
func ReplaceList[T any](base, overlay []T) []T {
	if len(overlay) == 0 {
		return base
	}
	result := make([]T, len(overlay))
	copy(result, overlay)
	return result
}

// MergeStates performs an additive merge of two state lists. States match by
// identifier; a match between different state kinds is a *KindMismatchError.
func MergeStates(base, overlay []State) ([]State, error) {
	return mergeBy(base, overlay,
		func(b, o State) (bool, error) {
			if b.StateID() != o.StateID() {
				return false, nil
			}
			if b.Kind() != o.Kind() {
				return false, &KindMismatchError{Key: b.StateID(), BaseKind: b.Kind(), OverlayKind: o.Kind()}
			}
			return true, nil
		},
		mergeState,
	)
}

// mergeState dispatches a merge over the closed set of state kinds.
func mergeState(base, overlay State) error {
	mismatch := &KindMismatchError{Key: base.StateID(), BaseKind: base.Kind(), OverlayKind: overlay.Kind()}

	switch b := base.(type) {
	case *ActionState:
		o, ok := overlay.(*ActionState)
		if !ok {
			return mismatch
		}
		b.Merge(o)
	case *ViewState:
		o, ok := overlay.(*ViewState)
		if !ok {
			return mismatch
		}
		b.Merge(o)
	case *DecisionState:
		o, ok := overlay.(*DecisionState)
		if !ok {
			return mismatch
		}
		b.Merge(o)
	case *EndState:
		o, ok := overlay.(*EndState)
		if !ok {
			return mismatch
		}
		b.Merge(o)
	default:
		return mismatch
	}
	return nil
}

// override returns overlay when it is set, base otherwise.
func override[T comparable](base, overlay T) T {
	var zero T
	if overlay != zero {
		return overlay
	}
	return base
}
