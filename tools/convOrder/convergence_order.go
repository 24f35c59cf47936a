// Package convOrder estimates the observed order of accuracy of a
// convergence study: the slope of log(error) against log(h) over a series
// of refined resolutions.
package convOrder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

type Study struct {
	Title string
	H     []float64 // Cell widths, one per resolution
	Err   []float64 // Matching error norms
}

func NewStudy(title string) *Study {
	return &Study{Title: title}
}

func (cs *Study) Add(h, err float64) {
	cs.H = append(cs.H, h)
	cs.Err = append(cs.Err, err)
}

// Order fits log(err) = p*log(h) + c by least squares and returns p
func (cs *Study) Order() (p float64, err error) {
	if len(cs.H) < 2 {
		err = fmt.Errorf("study %s: need at least 2 resolutions, have %d", cs.Title, len(cs.H))
		return
	}
	var (
		logH = make([]float64, len(cs.H))
		logE = make([]float64, len(cs.Err))
	)
	for i := range cs.H {
		if cs.Err[i] <= 0 {
			err = fmt.Errorf("study %s: error norm %g not positive", cs.Title, cs.Err[i])
			return
		}
		logH[i] = math.Log(cs.H[i])
		logE[i] = math.Log(cs.Err[i])
	}
	_, p = stat.LinearRegression(logH, logE, nil, false)
	return
}

func (cs *Study) Print() {
	fmt.Printf("Title = %s\n", cs.Title)
	for i := range cs.H {
		fmt.Printf("h = %10.6f, err = %12.4e\n", cs.H[i], cs.Err[i])
	}
	if p, err := cs.Order(); err == nil {
		fmt.Printf("Observed order = %5.2f\n", p)
	}
}
