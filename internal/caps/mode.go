package caps

// Mode — режим доступа записи списка. Двузначный: shared (чтение)
// и exclusive (чтение и запись).
type Mode uint8

const (
	ModeShared Mode = iota
	ModeExclusive
)

func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeExclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// Covers reports whether a holder with mode m satisfies a request for want.
func (m Mode) Covers(want Mode) bool { return m >= want }
