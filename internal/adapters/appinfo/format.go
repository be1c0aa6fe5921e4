package appinfo

// Each entry's metadata block starts with section byte 0x02 followed by
// an object tag and the key "common". The decoder picks up right after
// it, inside that object.
var Signature = []byte{0x02, 0x00, 'c', 'o', 'm', 'm', 'o', 'n', 0x00}

// AnchorKey is the name given to the root node of each decoded entry
const AnchorKey = "common"

// Field keys read from the common section
const (
	KeyID        = "gameid"
	KeyName      = "name"
	KeyType      = "type"
	KeyPlatforms = "oslist"
)
