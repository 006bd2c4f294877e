package physics

import (
	"strconv"
	"strings"

	"github.com/milk9111/physbind/scene"
)

// InstanceID is the body id of one instance of an instanced object.
func InstanceID(objectID string, index int) string {
	return objectID + "/" + strconv.Itoa(index)
}

// ParseInstanceID splits an id produced by InstanceID.
func ParseInstanceID(id string) (objectID string, index int, ok bool) {
	i := strings.LastIndexByte(id, '/')
	if i < 0 {
		return id, 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return id, 0, false
	}
	return id[:i], n, true
}

// BodyIDs returns the ordered instance group of obj: one id per instance for
// instanced objects, otherwise the object's own id.
func BodyIDs(obj scene.Object) []string {
	if obj == nil {
		return nil
	}
	inst, ok := obj.(scene.Instanced)
	if !ok {
		return []string{obj.UUID()}
	}
	ids := make([]string, inst.Count())
	for i := range ids {
		ids[i] = InstanceID(obj.UUID(), i)
	}
	return ids
}

// BodyID returns the id of instance index of obj.
func BodyID(obj scene.Object, index int) string {
	if _, ok := obj.(scene.Instanced); ok {
		return InstanceID(obj.UUID(), index)
	}
	return obj.UUID()
}
