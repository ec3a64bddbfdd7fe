package component

import "github.com/milk9111/fighter/spatial"

// TransformComponent places an entity in the world. Hitboxes of the entity
// point at this object as their parent.
var TransformComponent = NewComponent[spatial.Object]()
