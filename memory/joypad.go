package memory

// Button identifies one of the eight Game Boy inputs. The d-pad and face
// buttons share P1's low nibble and are only ever exposed one group at a
// time, selected by P1 bits 4-5.
type Button struct {
	bitIndex uint8
	isDpad   bool
}

var (
	ButtonRight  = Button{bitIndex: 0, isDpad: true}
	ButtonLeft   = Button{bitIndex: 1, isDpad: true}
	ButtonUp     = Button{bitIndex: 2, isDpad: true}
	ButtonDown   = Button{bitIndex: 3, isDpad: true}
	ButtonA      = Button{bitIndex: 0, isDpad: false}
	ButtonB      = Button{bitIndex: 1, isDpad: false}
	ButtonSelect = Button{bitIndex: 2, isDpad: false}
	ButtonStart  = Button{bitIndex: 3, isDpad: false}
)
