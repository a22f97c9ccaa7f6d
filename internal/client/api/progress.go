package api

import "io"

// progressReader reports how much of a fixed-length body has been read.
// Reported percentages are non-decreasing and reach 100 exactly once the
// final byte is consumed.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	last  int
	fn    ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return r
	}
	return &progressReader{r: r, total: total, last: -1, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := 100
		if p.total > 0 {
			pct = int(p.read * 100 / p.total)
		}
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.fn(pct)
		}
	}
	return n, err
}
