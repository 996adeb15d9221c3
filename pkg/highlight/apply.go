package highlight

// Flatten resolves ranges over a text of n characters into one category per
// character. Later ranges override earlier ones.
func Flatten(ranges []Range, n int) []Category {
	out := make([]Category, n)
	for _, r := range ranges {
		start := max(r.Start, 0)
		end := min(r.End(), n)
		for i := start; i < end; i++ {
			out[i] = r.Category
		}
	}
	return out
}

// Recorder is an Applier that keeps the per-character result of the last
// pass. It is handy for hosts that render from a snapshot.
type Recorder struct {
	Resets int
	cats   []Category
}

func (r *Recorder) Reset(length int) {
	r.Resets++
	r.cats = make([]Category, length)
}

func (r *Recorder) SetFormat(start, length int, c Category) {
	end := min(start+length, len(r.cats))
	for i := max(start, 0); i < end; i++ {
		r.cats[i] = c
	}
}

// Categories returns the per-character categories of the last pass.
func (r *Recorder) Categories() []Category { return r.cats }

// At returns the category of character i, or PlainText when out of range.
func (r *Recorder) At(i int) Category {
	if i < 0 || i >= len(r.cats) {
		return PlainText
	}
	return r.cats[i]
}
