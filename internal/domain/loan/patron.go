package loan

// ValidatePatronID 校验读者证号:非空、恰好6位、全部为数字
func ValidatePatronID(patronID string) error {
	if len(patronID) != PatronIDLength {
		return ErrInvalidPatronID
	}
	for i := 0; i < len(patronID); i++ {
		if patronID[i] < '0' || patronID[i] > '9' {
			return ErrInvalidPatronID
		}
	}
	return nil
}

// CanBorrowMore 在借册数是否低于上限
func CanBorrowMore(outstanding int) bool {
	return outstanding < MaxOutstandingLoans
}
