// Package logger builds slog loggers for the service and provides attribute
// constructors that keep key names consistent across packages.
//
// New returns a *slog.Logger writing JSON or text. WithEnvironment selects
// the preset for development, staging or production. ContextExtractor
// callbacks add request-scoped attributes, such as the request id, to every
// record logged with a context.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "notifykit"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.LogAttrs(ctx, slog.LevelWarn, "notification not delivered",
//	    logger.UserID(userID),
//	    logger.Destination(addr),
//	    logger.Error(err),
//	)
package logger
