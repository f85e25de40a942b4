package division

// Defaults is the initial division list seeded into a fresh installation.
var Defaults = []string{
	"EC",
	"EM",
	"ADM",
	"FIN",
	"BA",
	"PRG",
	"OPS",
	"IT",
	"EDITOR",
	"SOSMED",
	"PROGRAMMER",
	"DESIGN",
	"HR",
	"PRIMEHUB",
}
