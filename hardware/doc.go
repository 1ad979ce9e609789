// Package hardware is the base package for the Saturn emulation core. Its
// sub-packages contain the cycle-stepped SH-2 interpreter (sh2), the VDP2
// background controller (video/vdp2) and the layered compositor
// (video/compositor) that together form the hardest, most interlocking part
// of a Saturn emulator.
//
// Nothing in this tree owns a window, a GL context, or performs blocking
// I/O. Collaborators it depends on (VDP1, CD block, SCSP, SMPC, SCU DMA,
// cartridge/bios loading) are consumed only through the small interfaces
// they expose: memory read/write at widths {8,16,32}, interrupt delivery,
// cycle-count requests, and VBlank/HBlank notification.
package hardware
