// Package audit records a journal of changes made to the organizer.
//
// Every action the service applies or rejects, and every sync, becomes one
// Entry. The file logger appends entries as JSON lines, so the journal can
// be read back with ReadFile or with any line-oriented tool:
//
//	logger, err := audit.NewFileLogger(filepath.Join(dataDir, audit.DefaultFile))
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//
//	svc := service.New(st, service.WithAudit(logger))
//
// Sequence numbers continue across processes: a file logger starts after
// the last sequence found in the existing file.
package audit
