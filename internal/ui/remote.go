package ui

// remote holds one independently fetched slice of panel state. Each fetch
// resolves into its own remote, so rendering never gates on a global loading
// flag and a slice that already settled is never shown as stale.
//
// idle means the slice has no data source wired yet, which renders
// differently from ready-with-empty-data.
type sliceStatus int

const (
	sliceIdle sliceStatus = iota
	sliceLoading
	sliceReady
	sliceFailed
)

type remote[T any] struct {
	status sliceStatus
	data   T
	err    error
}

func (r *remote[T]) begin() {
	r.status = sliceLoading
	r.err = nil
}

func (r *remote[T]) resolve(data T, err error) {
	if err != nil {
		r.status = sliceFailed
		r.err = err
		return
	}
	r.status = sliceReady
	r.data = data
	r.err = nil
}

func (r remote[T]) idle() bool    { return r.status == sliceIdle }
func (r remote[T]) loading() bool { return r.status == sliceLoading }
func (r remote[T]) ready() bool   { return r.status == sliceReady }
func (r remote[T]) failed() bool  { return r.status == sliceFailed }

// settled reports that the fetch finished one way or the other.
func (r remote[T]) settled() bool { return r.status == sliceReady || r.status == sliceFailed }
