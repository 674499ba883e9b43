// Package irq defines the basic interfaces for working
// with a 6502 family interrupt. A generator of interrupts (IRQ/NMI)
// implements Sender so the component driving the CPU can poll line
// state without cross coupling component logic.
package irq

type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}
