package domain

// EnrollResult reports a completed enrollment pass.
type EnrollResult struct {
	CRPCount int      `json:"crp_count"`
	Log      []string `json:"log"`
}

// AuthResult reports one challenge-response authentication round.
type AuthResult struct {
	Success          bool     `json:"success"`
	ChallengePreview string   `json:"challenge_preview"`
	DeviceResponse   byte     `json:"device_response"`
	ExpectedResponse byte     `json:"expected_response"`
	Log              []string `json:"log"`
}

// KeyExchangeResult reports a completed Diffie-Hellman exchange. Public
// keys are hex encoded; only a short preview of the derived session key
// is ever exposed.
type KeyExchangeResult struct {
	DevicePublicKey   string   `json:"device_public_key"`
	ServerPublicKey   string   `json:"server_public_key"`
	SessionKeyPreview string   `json:"session_key_preview"`
	Log               []string `json:"log"`
}

// ProvisionResult reports a credential provisioning round trip.
type ProvisionResult struct {
	Provisioned        bool     `json:"provisioned"`
	CredentialsPreview string   `json:"credentials_preview"`
	Log                []string `json:"log"`
}

// OperateResult reports one encrypted operational exchange: a
// server-to-device message and the device's acknowledgement, both
// recovered from their ciphertexts.
type OperateResult struct {
	ServerMessage string   `json:"server_message"`
	DeviceMessage string   `json:"device_message"`
	Log           []string `json:"log"`
}
