package input

// touchTable tracks active contacts in the order they went down.
type touchTable struct {
	touches []Touch
}

func (t *touchTable) down(id int64, x, y float32) {
	for i := range t.touches {
		if t.touches[i].ID == id {
			t.touches[i].PageX, t.touches[i].PageY = x, y
			return
		}
	}
	t.touches = append(t.touches, Touch{ID: id, PageX: x, PageY: y})
}

func (t *touchTable) move(id int64, x, y float32) bool {
	for i := range t.touches {
		if t.touches[i].ID == id {
			t.touches[i].PageX, t.touches[i].PageY = x, y
			return true
		}
	}
	return false
}

func (t *touchTable) up(id int64) {
	for i := range t.touches {
		if t.touches[i].ID == id {
			t.touches = append(t.touches[:i], t.touches[i+1:]...)
			return
		}
	}
}

// snapshot returns a copy that stays valid after the table changes.
func (t *touchTable) snapshot() []Touch {
	return append([]Touch(nil), t.touches...)
}

// keyCode folds lower-case letters onto upper case so key codes match
// regardless of the shift state.
func keyCode(sym int) int {
	if sym >= 'a' && sym <= 'z' {
		return sym - 'a' + 'A'
	}
	return sym
}
