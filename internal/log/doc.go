// Package log provides logging with automatic masking of personal and secret
// data, built on top of the standard slog package.
//
// Report generation handles student records, so log attributes may carry
// personal details. The SecureHandler masks:
//   - personal data keys (date of birth, phone, email, address, guardian)
//   - credentials (password, token, secret, api_key)
//   - values that look like e-mail addresses, phone numbers or bearer tokens
//
// Register numbers, names of output files and report IDs are logged as-is.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Info("report generated",
//	    "register_no", "CS2024001",
//	    "dob", "2005-04-12", // masked
//	)
package log
