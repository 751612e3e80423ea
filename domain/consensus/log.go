package consensus

import (
	"github.com/gcoinproject/gcoind/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CNSS")
