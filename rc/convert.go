package rc

// Convert returns an owner of s's object typed as U. conv derives the U view
// from the T object, e.g. func(o *Order) *Header { return &o.Header }, so any
// field offset is applied here rather than assumed to be zero. The result
// shares s's control block.
func Convert[U, T any](s *Shared[T], conv func(*T) *U) Shared[U] {
	if s.cb == nil {
		return Shared[U]{}
	}
	return fromBlock(s.cb, conv(s.ptr))
}

// ConvertMove is Convert that transfers s's ownership instead of adding to it.
func ConvertMove[U, T any](s *Shared[T], conv func(*T) *U) Shared[U] {
	if s.cb == nil {
		return Shared[U]{}
	}
	out := Shared[U]{cb: s.cb, ptr: conv(s.ptr)}
	s.cb, s.ptr = nil, nil
	return out
}

// ConvertWeak returns a weak handle typed as U that observes w's object.
// conv must return a pointer into the object; it is not called once the
// object has expired.
func ConvertWeak[U, T any](w *Weak[T], conv func(*T) *U) Weak[U] {
	if w.cb == nil {
		return Weak[U]{}
	}
	off := convertView(w, conv)
	w.cb.Counts().Weak++
	return Weak[U]{cb: w.cb, off: off}
}

// ConvertWeakMove is ConvertWeak that transfers w's observation instead of
// adding to it.
func ConvertWeakMove[U, T any](w *Weak[T], conv func(*T) *U) Weak[U] {
	if w.cb == nil {
		return Weak[U]{}
	}
	out := Weak[U]{cb: w.cb, off: convertView(w, conv)}
	w.cb, w.off = nil, 0
	return out
}

func convertView[U, T any](w *Weak[T], conv func(*T) *U) uintptr {
	if w.Expired() {
		return noView
	}
	return viewOffset(w.cb, conv(w.view()))
}
