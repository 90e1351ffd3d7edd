package configs

import _ "embed"

// ApplicationFile is the bundled application.yml used when PROPERTIES_FILE_PATH is not set.
//
//go:embed application.yml
var ApplicationFile []byte

// MessagesFile is the bundled messages.yml used when MESSAGES_FILE_PATH is not set.
//
//go:embed messages.yml
var MessagesFile []byte
