package io

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"
)

// PlotProfiles writes a figure of time-averaged density and potential
// profiles to fname. xs are the grid positions [m], ne and ni the electron
// and ion densities [m^-3], and phi the potential [V].
//
// Like all pyplot functions, this only queues up commands. The figure is
// drawn when plt.Execute is called.
func PlotProfiles(fname string, xs, ne, ni, phi []float64) {
	mm := make([]float64, len(xs))
	for i := range xs {
		mm[i] = xs[i] * 1e3
	}

	plt.Figure(plt.FigSize(8, 10))
	plt.Plot(mm, ne, "b", plt.LW(2))
	plt.Plot(mm, ni, "r", plt.LW(2))
	plt.Title("Electron (blue) and ion (red) density")
	plt.XLabel(`$x$ [mm]`, plt.FontSize(16))
	plt.YLabel(`$n$ [m$^{-3}$]`, plt.FontSize(16))
	plt.XLim(mm[0], mm[len(mm)-1])
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fmt.Sprintf("%s_density.png", fname))

	plt.Figure(plt.FigSize(8, 10))
	plt.Plot(mm, phi, "k", plt.LW(2))
	plt.Title("Potential")
	plt.XLabel(`$x$ [mm]`, plt.FontSize(16))
	plt.YLabel(`$\phi$ [V]`, plt.FontSize(16))
	plt.XLim(mm[0], mm[len(mm)-1])
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fmt.Sprintf("%s_potential.png", fname))
}
