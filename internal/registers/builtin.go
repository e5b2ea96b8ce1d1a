package registers

var builtins = map[string]map[uint32]string{
	"mc68hc908gz60": gz60,
	"mc68hc908gz60-sci1": gz60SCI1,
}

// gz60 is the MC68HC908GZ60 register block including MSCAN and the
// CONFIG registers at 0xFE00.
var gz60 = map[uint32]string{
	0x00: "PORTA", 0x01: "PORTB", 0x02: "PORTC", 0x03: "PORTD",
	0x04: "DDRA", 0x05: "DDRB", 0x06: "DDRC", 0x07: "DDRD",
	0x08: "PORTE", 0x09: "PORTF", 0x0A: "PORTG",
	0x0C: "DDRE", 0x0D: "DDRF", 0x0E: "DDRG",
	0x10: "PTAPUE", 0x11: "PTBPUE", 0x12: "PTCPUE", 0x13: "PTDPUE",
	0x14: "PTEPUE", 0x15: "PTFPUE", 0x16: "PTGPUE",

	// SCI
	0x18: "SCC1", 0x19: "SCC2", 0x1A: "SCC3", 0x1B: "SCS1",
	0x1C: "SCS2", 0x1D: "SCDR", 0x1E: "SCBR",

	// SPI
	0x20: "SPCR", 0x21: "SPSCR", 0x22: "SPDR",

	// Timebase
	0x24: "TBCR", 0x25: "TBDR",

	// Timer 1
	0x30: "T1SC", 0x31: "T1CNTH", 0x32: "T1CNTL",
	0x33: "T1MODH", 0x34: "T1MODL",
	0x35: "T1SC0", 0x36: "T1CH0H", 0x37: "T1CH0L",
	0x38: "T1SC1", 0x39: "T1CH1H", 0x3A: "T1CH1L",

	// Timer 2
	0x40: "T2SC", 0x41: "T2CNTH", 0x42: "T2CNTL",
	0x43: "T2MODH", 0x44: "T2MODL",
	0x45: "T2SC0", 0x46: "T2CH0H", 0x47: "T2CH0L",
	0x48: "T2SC1", 0x49: "T2CH1H", 0x4A: "T2CH1L",

	// ADC
	0x50: "ADSCR", 0x51: "ADR",

	// MSCAN
	0x58: "CMCR0", 0x59: "CMCR1", 0x5A: "CBTR0", 0x5B: "CBTR1",
	0x5C: "CRFLG", 0x5D: "CRIER", 0x5E: "CTFLG", 0x5F: "CTIER",
	0x60: "CTARQ", 0x61: "CTAAK", 0x62: "CTBSEL", 0x63: "CIDAC",
	0x64: "CRXERR", 0x65: "CTXERR",
	0x68: "CIDAR0", 0x69: "CIDAR1", 0x6A: "CIDAR2", 0x6B: "CIDAR3",
	0x70: "CIDMR0", 0x71: "CIDMR1", 0x72: "CIDMR2", 0x73: "CIDMR3",
	0x74: "CIDAR4", 0x75: "CIDAR5", 0x76: "CIDAR6", 0x77: "CIDAR7",
	0x78: "CIDMR4", 0x79: "CIDMR5", 0x7A: "CIDMR6", 0x7B: "CIDMR7",
	0x80: "CRXFG", // receive foreground buffer, 16 bytes
	0x90: "CTXFG", // transmit foreground buffer, 16 bytes

	0xFE00: "CONFIG2", 0xFE01: "CONFIG1",
}

// gz60SCI1 uses the SCI1/SPI/ADC naming of the later S08 manuals, with the
// MSCAN block at 0x48.
var gz60SCI1 = map[uint32]string{
	0x00: "PORTA", 0x01: "PORTB", 0x02: "PORTC", 0x03: "PORTD",
	0x04: "DDRA", 0x05: "DDRB", 0x06: "DDRC", 0x07: "DDRD",
	0x08: "PORTE", 0x09: "PORTF", 0x0A: "PORTG",
	0x0C: "DDRE", 0x0D: "DDRF", 0x0E: "DDRG",
	0x10: "PTAPUE", 0x11: "PTBPUE", 0x12: "PTCPUE", 0x13: "PTDPUE",
	0x1A: "SCI1S1", 0x1B: "SCI1S2", 0x1C: "SCI1C1", 0x1D: "SCI1C2",
	0x1E: "SCI1C3", 0x1F: "SCI1D",
	0x20: "SPIC1", 0x21: "SPIC2", 0x22: "SPIBR", 0x23: "SPIS",
	0x25: "SPID",
	0x30: "T1SC", 0x31: "T1CNTH", 0x32: "T1CNTL",
	0x33: "T1MODH", 0x34: "T1MODL",
	0x35: "T1SC0", 0x36: "T1CH0H", 0x37: "T1CH0L",
	0x38: "T1SC1", 0x39: "T1CH1H", 0x3A: "T1CH1L",
	0x40: "ADCSC1", 0x41: "ADCSC2", 0x42: "ADCRH", 0x43: "ADCRL",
	0x48: "CANCTL0", 0x49: "CANCTL1", 0x4A: "CANBTR0", 0x4B: "CANBTR1",
	0x4C: "CANRFLG", 0x4D: "CANRIER", 0x4E: "CANTFLG", 0x4F: "CANTIER",
	0xFE00: "CONFIG2", 0xFE01: "CONFIG1",
}
