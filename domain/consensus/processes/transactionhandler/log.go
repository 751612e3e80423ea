package transactionhandler

import "github.com/gcoinproject/gcoind/infrastructure/logger"

var log = logger.RegisterSubSystem("TXHD")
