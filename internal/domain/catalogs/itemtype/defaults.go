package itemtype

// Defaults is the initial item type list seeded into a fresh installation.
var Defaults = []struct{ Code, Name string }{
	{"01", "Monitor"},
	{"02", "PC"},
	{"03", "UPS"},
	{"04", "Keyboard"},
	{"05", "Mouse"},
	{"06", "TV"},
	{"07", "Laptop"},
	{"08", "Smartphone"},
	{"09", "Printer"},
	{"10", "MousePad"},
	{"11", "Shooting Kit"},
	{"12", "Mini PC"},
	{"13", "Router"},
	{"14", "WifiUSB"},
	{"15", "Headset"},
	{"16", "Telpon rumah"},
	{"17", "Stavolt"},
}
