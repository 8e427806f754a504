package integrations

// largest file accepted by the upload pass-through
const maxUploadSize = 10 << 20
