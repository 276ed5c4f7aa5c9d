package graphson

// Reserved document tokens. ClassToken is the type-tag key embedded when
// type embedding is enabled; it is namespaced so it cannot collide with
// ordinary data fields.
const (
	ClassToken = "@class"
	ValueToken = "@value"
)

// Class names of the base module.
const (
	ClassVertex   = "g:Vertex"
	ClassEdge     = "g:Edge"
	ClassProperty = "g:Property"
	ClassPath     = "g:Path"
	ClassInt64    = "g:Int64"
	ClassUint64   = "g:UInt64"
)

// Document field names of the base module.
const (
	fieldID         = "id"
	fieldLabel      = "label"
	fieldKey        = "key"
	fieldValue      = "value"
	fieldOutV       = "outV"
	fieldInV        = "inV"
	fieldProperties = "properties"
	fieldObjects    = "objects"
	fieldLabels     = "labels"
)
