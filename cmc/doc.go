// Package cmc implements the Constrained Monte Carlo integrator for
// atomistic spin systems: equilibrium sampling of a classical Heisenberg
// spin ensemble at fixed temperature with the net magnetization direction
// held along a chosen constraint axis.
package cmc
