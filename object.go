package raster

// Kind is the type tag stamped on every engine resource handle. It
// never changes after creation, except that Delete poisons it back to
// KindNone so later uses of the handle fail their type check.
type Kind uint8

const (
	// KindNone marks a zero or deleted handle.
	KindNone Kind = iota
	// KindBitmap tags bitmap handles.
	KindBitmap
	// KindPalette tags palette handles.
	KindPalette
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBitmap:
		return "Bitmap"
	case KindPalette:
		return "Palette"
	default:
		return "Unknown"
	}
}

// object is the header embedded by every engine resource. It carries
// the type tag, the ownership flag for an embedded sub-resource, and
// the inline payload storage sized at creation time.
type object struct {
	kind  Kind
	owns  bool
	store []byte
}

func newObject(kind Kind, extra int) object {
	return object{kind: kind, store: make([]byte, extra)}
}

func (o *object) base() *object { return o }

// Object is the capability surface shared by every engine resource:
// access to the common header and to the sub-resource the handle may
// exclusively own.
type Object interface {
	base() *object
	owned() Object
}

// checkObject reports whether o is a live handle of the given kind.
// It is the guard at the top of every typed operation and never
// mutates.
func checkObject(o Object, kind Kind) bool {
	if o == nil {
		return false
	}
	b := o.base()
	return b != nil && b.kind == kind
}

// cloneStore duplicates the inline payload storage so a clone gets
// distinct backing bytes.
func cloneStore(src *object) []byte {
	return append([]byte(nil), src.store...)
}

// deleteObject releases a handle. If the handle owns a sub-resource it
// is deleted first, cascading. The type tag is poisoned and the storage
// dropped, so any later operation on the handle fails its type check
// instead of touching freed state.
func deleteObject(o Object) {
	if o == nil {
		return
	}
	b := o.base()
	if b == nil || b.kind == KindNone {
		return
	}
	if b.owns {
		deleteObject(o.owned())
	}
	b.kind = KindNone
	b.owns = false
	b.store = nil
}
