package fare

import "sync"

// QuoteRequest is one job posted to the worker. ID is echoed back so a
// caller firing quotes on every keystroke can match responses.
type QuoteRequest struct {
	ID     string     `json:"id"`
	Params TripParams `json:"params"`
}

// QuoteResponse carries either a breakdown or an error string, never both.
type QuoteResponse struct {
	ID     string        `json:"id"`
	Result FareBreakdown `json:"result"`
	Err    string        `json:"err,omitempty"`
}

// Worker runs calculations off the caller's goroutine. Calculate itself
// is cheap and synchronous; this exists only so UI-facing callers can
// keep their hot path free. Offloading is a deployment choice, calling
// Calculate directly is equally valid.
type Worker struct {
	requests  chan QuoteRequest
	responses chan QuoteResponse
	done      chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
}

func NewWorker(buffer int) *Worker {
	if buffer < 1 {
		buffer = 1
	}
	return &Worker{
		requests:  make(chan QuoteRequest, buffer),
		responses: make(chan QuoteResponse, buffer),
		done:      make(chan struct{}),
	}
}

func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case req := <-w.requests:
			resp := QuoteResponse{ID: req.ID, Result: Calculate(req.Params)}
			if resp.Result.Empty() {
				resp.Err = "vehicle class not found"
			}
			select {
			case w.responses <- resp:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// Submit queues a request. Returns false once the worker is stopped.
func (w *Worker) Submit(req QuoteRequest) bool {
	// The stopped check must run on its own; a single select picks
	// randomly when both the buffered send and done are ready.
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.requests <- req:
		return true
	case <-w.done:
		return false
	}
}

func (w *Worker) Responses() <-chan QuoteResponse {
	return w.responses
}

func (w *Worker) Stop() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}
