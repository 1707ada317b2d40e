package henhouse

import (
	"errors"
	"fmt"
)

// ResourceType classifies a ResourceHandle.
type ResourceType uint8

const (
	ResourceMaterial ResourceType = iota
	ResourcePointSet
	ResourceMesh
	ResourceTexture
	ResourceCubeMap
)

var resourceTypeNames = [...]string{"material", "point-set", "mesh", "texture", "cube-map"}

func (t ResourceType) String() string {
	if int(t) < len(resourceTypeNames) {
		return resourceTypeNames[t]
	}
	return "unknown"
}

// ResourceHandle is an opaque reference to a loaded geometry, material, or
// texture. The engine stores and forwards handles; it never reads Data.
type ResourceHandle struct {
	Name string
	Type ResourceType
	ID   uint32
	Size int32
	Data any
}

// ResourceSet groups the handles an entity draws with. Texture and EnvMap are
// optional.
type ResourceSet struct {
	Geometry *ResourceHandle
	Material *ResourceHandle
	Texture  *ResourceHandle
	EnvMap   *ResourceHandle
}

// ResourceStore resolves resource names to handles.
type ResourceStore interface {
	Resource(name string) (*ResourceHandle, bool)
}

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrInvalidResourceType = errors.New("invalid resource type")
)

// ResourceError reports a failed resource resolution during entity construction.
type ResourceError struct {
	Name string
	Type ResourceType
	Err  error
}

func (e *ResourceError) Error() string {
	if errors.Is(e.Err, ErrInvalidResourceType) {
		return fmt.Sprintf("henhouse: resource %q: %v %s", e.Name, e.Err, e.Type)
	}
	return fmt.Sprintf("henhouse: resource %q: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Resources is a map-backed ResourceStore. It is filled by the surrounding
// application after it has loaded or generated its assets.
type Resources struct {
	handles map[string]*ResourceHandle
	nextID  uint32
}

// NewResources creates an empty store.
func NewResources() *Resources {
	return &Resources{handles: make(map[string]*ResourceHandle)}
}

// Add registers a handle under name, replacing any previous one, and returns it.
func (r *Resources) Add(name string, typ ResourceType, data any) *ResourceHandle {
	r.nextID++
	h := &ResourceHandle{Name: name, Type: typ, ID: r.nextID, Data: data}
	r.handles[name] = h
	return h
}

// Resource implements ResourceStore.
func (r *Resources) Resource(name string) (*ResourceHandle, bool) {
	h, ok := r.handles[name]
	return h, ok
}

// Len returns the number of registered handles.
func (r *Resources) Len() int {
	return len(r.handles)
}

// CollectResources resolves the named geometry, material, and optional texture
// and environment map. Empty texture or envmap names are skipped. Geometry must
// be a mesh or point set and material must be a material.
func CollectResources(store ResourceStore, geometry, material, texture, envmap string) (ResourceSet, error) {
	var set ResourceSet
	var err error
	if set.Geometry, err = resolve(store, geometry, ResourceMesh, ResourcePointSet); err != nil {
		return ResourceSet{}, err
	}
	if set.Material, err = resolve(store, material, ResourceMaterial); err != nil {
		return ResourceSet{}, err
	}
	if texture != "" {
		if set.Texture, err = resolve(store, texture); err != nil {
			return ResourceSet{}, err
		}
	}
	if envmap != "" {
		if set.EnvMap, err = resolve(store, envmap); err != nil {
			return ResourceSet{}, err
		}
	}
	return set, nil
}

func resolve(store ResourceStore, name string, allowed ...ResourceType) (*ResourceHandle, error) {
	h, ok := store.Resource(name)
	if !ok || h == nil {
		logger.Warn("resource not found", "name", name)
		return nil, &ResourceError{Name: name, Err: ErrResourceNotFound}
	}
	if len(allowed) == 0 {
		return h, nil
	}
	for _, t := range allowed {
		if h.Type == t {
			return h, nil
		}
	}
	return nil, &ResourceError{Name: name, Type: h.Type, Err: ErrInvalidResourceType}
}

// CreateEntity builds an entity of the given kind from named resources. It is
// the factory boundary with the resource store: any missing name fails the
// whole construction with a *ResourceError.
func CreateEntity(store ResourceStore, name string, kind Kind, geometry, material, texture, envmap string) (*Entity, error) {
	set, err := CollectResources(store, geometry, material, texture, envmap)
	if err != nil {
		return nil, err
	}
	e := NewEntity(name, kind)
	e.Resources = set
	return e, nil
}
