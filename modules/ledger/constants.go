package ledger

const Version = "v0.0.1"
