package common

const (
	MODE_STRICT   = "strict"
	MODE_FALLBACK = "fallback"

	STATUS_ENABLED  = "Enabled"
	STATUS_DISABLED = "Disabled"

	// NTLM_HASH_LENGTH is the hex length of both the LM and the NT column of a pwdump line
	NTLM_HASH_LENGTH = 32
)
