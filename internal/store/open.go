package store

import "fmt"

// OpenLedger returns the ledger for driver: "csv" uses csvPath, "sqlite"
// opens sqlitePath.
func OpenLedger(driver, csvPath, sqlitePath string) (LedgerRepository, error) {
	switch driver {
	case "", "csv":
		return NewCSVLedger(csvPath), nil
	case "sqlite":
		return OpenSQLiteLedger(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", driver)
	}
}
