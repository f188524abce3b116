package consumption

// HistorySize cantidad de muestras que conserva cada patrón.
const HistorySize = 20

// History buffer circular de tamaño fijo; al llenarse descarta la muestra más antigua.
type History struct {
	buf   [HistorySize]float64
	start int
	n     int
}

// NewHistory reconstruye el buffer desde un slice ordenado de la más antigua a la más reciente.
// Si el slice excede la capacidad se conservan las últimas HistorySize muestras.
func NewHistory(samples []float64) *History {
	h := &History{}
	if len(samples) > HistorySize {
		samples = samples[len(samples)-HistorySize:]
	}
	for _, s := range samples {
		h.Push(s)
	}
	return h
}

// Push agrega una muestra.
func (h *History) Push(v float64) {
	if h.n < HistorySize {
		h.buf[(h.start+h.n)%HistorySize] = v
		h.n++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % HistorySize
}

// Len número de muestras almacenadas.
func (h *History) Len() int { return h.n }

// Values devuelve una copia ordenada de la más antigua a la más reciente.
func (h *History) Values() []float64 {
	out := make([]float64, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.start+i)%HistorySize]
	}
	return out
}
