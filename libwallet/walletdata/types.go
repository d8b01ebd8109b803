package walletdata

// Entry is one key of the app state.
type Entry struct {
	Key   string `storm:"id"`
	Value string
	// Sealed marks values encrypted with the user password. They are stored
	// and loaded as is.
	Sealed    bool
	UpdatedAt int64
}

// TransferRecord is a submitted balances transfer.
type TransferRecord struct {
	ID        int    `storm:"id,increment"`
	Hash      string `storm:"unique"`
	From      string `storm:"index"`
	To        string
	Amount    string
	Network   string
	Timestamp int64 `storm:"index"`
}
