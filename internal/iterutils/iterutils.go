// Iterator helpers
package iterutils

import "iter"

// PageFunc fetches at most limit items starting at offset
type PageFunc[V any] func(offset, limit int) ([]V, error)

// Paginate turns a page fetcher into a sequence. Pages are requested until
// one comes back empty. Each range over the sequence starts again from
// offset zero.
func Paginate[V any](pageSize int, fetch PageFunc[V]) iter.Seq2[V, error] {
	if pageSize < 1 {
		pageSize = 1
	}

	return func(yield func(V, error) bool) {
		offset := 0
		for {
			page, err := fetch(offset, pageSize)
			if err != nil {
				var zero V
				yield(zero, err)
				return
			}

			if len(page) == 0 {
				return
			}

			for _, v := range page {
				if !yield(v, nil) {
					return
				}
			}
			offset += len(page)
		}
	}
}

// Collect drains a sequence, stopping at the first error
func Collect[V any](seq iter.Seq2[V, error]) ([]V, error) {
	var out []V
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
