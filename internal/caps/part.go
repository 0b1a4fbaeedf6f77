package caps

// PartID — плотный индекс части в Registry; 0 зарезервирован.
type PartID uint32

const NoPartID PartID = 0

func (id PartID) IsValid() bool { return id != NoPartID }

// RecordID — плотный индекс записи в Registry; 0 зарезервирован.
type RecordID uint32

const NoRecordID RecordID = 0

func (id RecordID) IsValid() bool { return id != NoRecordID }

type Shape uint8

const (
	// ShapeOpaque — часть без хранилища: только учёт прав.
	ShapeOpaque Shape = iota
	// ShapeField — часть, разрешающаяся в одно поле структуры.
	ShapeField
)

func (s Shape) String() string {
	switch s {
	case ShapeOpaque:
		return "opaque"
	case ShapeField:
		return "field"
	default:
		return "unknown"
	}
}

// Part — глобально объявленная единица доступа.
type Part struct {
	Name  string
	Shape Shape
	// Type — Go-тип поля как написан в декларации; для record-типизированных
	// частей это имя записи, для opaque — пусто.
	Type string
	// Record валиден только для частей вида `part X: record M`; единственная
	// форма, допускающая вложенные пути.
	Record RecordID
}

// Nestable reports whether paths may continue beneath this part.
func (p *Part) Nestable() bool { return p.Record.IsValid() }
