// Package agilent contains drivers for Agilent test equipment.
package agilent

import (
	"fmt"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/instruments/validators"
)

// E4407B drives the Agilent E4407B spectrum analyzer over GPIB, covering
// the scan surface: frequency setup, sweep control and trace readout.
type E4407B struct {
	instruments.Instrument
}

// Frequency limits of the instrument in Hz.
const (
	e4407bMinFrequency = 9e3
	e4407bMaxFrequency = 26.5e9
)

// NewE4407B returns a driver bound to the given adapter.
func NewE4407B(adapter instruments.Adapter) *E4407B {
	return &E4407B{
		Instrument: instruments.New(adapter, "Agilent E4407B Spectrum Analyzer"),
	}
}

// Reset performs an instrument reset.
func (a *E4407B) Reset() error {
	return a.Write("*RST")
}

// Preset restores the preset conditions.
func (a *E4407B) Preset() error {
	return a.Write("SYST:PRES")
}

// Abort stops the sweep or measurement in progress.
func (a *E4407B) Abort() error {
	return a.Write(":ABOR")
}

// StartFrequency reads the sweep start frequency in Hz.
func (a *E4407B) StartFrequency() (float64, error) {
	return a.AskFloat(":SENS:FREQ:STAR?")
}

// SetStartFrequency sets the sweep start frequency in Hz.
func (a *E4407B) SetStartFrequency(hz float64) error {
	v, err := validators.StrictRange(hz, e4407bMinFrequency, e4407bMaxFrequency)
	if err != nil {
		return err
	}
	return a.Write(fmt.Sprintf(":SENS:FREQ:STAR %g", v))
}

// StopFrequency reads the sweep stop frequency in Hz.
func (a *E4407B) StopFrequency() (float64, error) {
	return a.AskFloat(":SENS:FREQ:STOP?")
}

// SetStopFrequency sets the sweep stop frequency in Hz.
func (a *E4407B) SetStopFrequency(hz float64) error {
	v, err := validators.StrictRange(hz, e4407bMinFrequency, e4407bMaxFrequency)
	if err != nil {
		return err
	}
	return a.Write(fmt.Sprintf(":SENS:FREQ:STOP %g", v))
}

// CenterFrequency reads the center frequency in Hz.
func (a *E4407B) CenterFrequency() (float64, error) {
	return a.AskFloat(":SENS:FREQ:CENT?")
}

// SetCenterFrequency sets the center frequency in Hz, truncated to the
// instrument's limits.
func (a *E4407B) SetCenterFrequency(hz float64) error {
	v := validators.TruncatedRange(hz, e4407bMinFrequency, e4407bMaxFrequency)
	return a.Write(fmt.Sprintf(":SENS:FREQ:CENT %g", v))
}

// FrequencyStep reads the center frequency step increment in Hz.
func (a *E4407B) FrequencyStep() (float64, error) {
	return a.AskFloat(":SENS:FREQ:CENT:STEP:INCR?")
}

// SetFrequencyStep sets the center frequency step increment in Hz.
func (a *E4407B) SetFrequencyStep(hz float64) error {
	return a.Write(fmt.Sprintf(":SENS:FREQ:CENT:STEP:INCR %g", hz))
}

// Span reads the frequency span in Hz.
func (a *E4407B) Span() (float64, error) {
	return a.AskFloat(":SENS:FREQ:SPAN?")
}

// SetSpan sets the frequency span in Hz.
func (a *E4407B) SetSpan(hz float64) error {
	return a.Write(fmt.Sprintf(":SENS:FREQ:SPAN %g", hz))
}

// FullSpan sets the span to the full range of the instrument.
func (a *E4407B) FullSpan() error {
	return a.Write(":SENS:FREQ:SPAN:FULL")
}

// LastSpan restores the previous span.
func (a *E4407B) LastSpan() error {
	return a.Write(":SENS:FREQ:SPAN:PREV")
}

// SweepPoints reads the number of points in the sweep.
func (a *E4407B) SweepPoints() (int, error) {
	return a.AskInt(":SENS:SWE:POIN?")
}

// SetSweepPoints sets the number of sweep points, truncated to 101..8192.
func (a *E4407B) SetSweepPoints(points int) error {
	v := validators.TruncatedRange(float64(points), 101, 8192)
	return a.Write(fmt.Sprintf(":SENS:SWE:POIN %d", int(v)))
}

// SweepTime reads the sweep time in seconds.
func (a *E4407B) SweepTime() (float64, error) {
	return a.AskFloat(":SENS:SWE:TIME?")
}

// SetSweepTime sets the sweep time in seconds.
func (a *E4407B) SetSweepTime(seconds float64) error {
	return a.Write(fmt.Sprintf(":SENS:SWE:TIME %g", seconds))
}

// ResolutionBandwidth reads the resolution bandwidth in Hz.
func (a *E4407B) ResolutionBandwidth() (float64, error) {
	return a.AskFloat(":SENS:BAND:RES?")
}

// SetResolutionBandwidth sets the resolution bandwidth in Hz.
func (a *E4407B) SetResolutionBandwidth(hz float64) error {
	return a.Write(fmt.Sprintf(":SENS:BAND:RES %g", hz))
}

// ReferenceLevel reads the display reference level in dBm.
func (a *E4407B) ReferenceLevel() (float64, error) {
	return a.AskFloat(":DISP:WIND:TRAC:Y:RLEV?")
}

// SetReferenceLevel sets the display reference level in dBm.
func (a *E4407B) SetReferenceLevel(dbm float64) error {
	return a.Write(fmt.Sprintf(":DISP:WIND:TRAC:Y:RLEV %g", dbm))
}

// InputAttenuation reads the input attenuation in dB.
func (a *E4407B) InputAttenuation() (float64, error) {
	return a.AskFloat(":SENS:POW:ATT?")
}

// SetInputAttenuation sets the input attenuation, snapped up to the next
// available 5 dB step.
func (a *E4407B) SetInputAttenuation(db float64) error {
	steps := []float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65}
	v := validators.TruncatedDiscreteSet(db, steps)
	return a.Write(fmt.Sprintf(":SENS:POW:ATT %g", v))
}

// ContinuousSweep reads whether the analyzer sweeps continuously.
func (a *E4407B) ContinuousSweep() (bool, error) {
	v, err := a.AskInt(":INIT:CONT?")
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetContinuousSweep switches between continuous and single sweep.
func (a *E4407B) SetContinuousSweep(on bool) error {
	arg := 0
	if on {
		arg = 1
	}
	return a.Write(fmt.Sprintf(":INIT:CONT %d", arg))
}

// TriggerSweep starts a single sweep.
func (a *E4407B) TriggerSweep() error {
	return a.Write(":INIT:IMM")
}

// Trace reads one of the analyzer's three traces as amplitude values.
func (a *E4407B) Trace(trace int) ([]float64, error) {
	t, err := validators.StrictDiscreteSet(trace, []int{1, 2, 3})
	if err != nil {
		return nil, err
	}
	return a.Values(fmt.Sprintf(":TRAC? TRACE%d", t))
}

// PeakCount reads the number of peaks the trace math found.
func (a *E4407B) PeakCount() (int, error) {
	return a.AskInt(":TRAC:MATH:PEAK:POIN?")
}

// Peaks reads the peak list from the trace math.
func (a *E4407B) Peaks() ([]float64, error) {
	return a.Values(":TRAC:MATH:PEAK?")
}
