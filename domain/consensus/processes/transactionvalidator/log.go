package transactionvalidator

import (
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/gcoinproject/gcoind/util/panics"
)

var log = logger.RegisterSubSystem("TXVL")
var spawn = panics.GoroutineWrapperFunc(log)
