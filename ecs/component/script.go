package component

// Script drives an entity's Input from a tengo program under
// prefabs/scripts.
type Script struct {
	Path string
}

var ScriptComponent = NewComponent[Script]()
