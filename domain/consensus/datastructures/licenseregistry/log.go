package licenseregistry

import "github.com/gcoinproject/gcoind/infrastructure/logger"

var log = logger.RegisterSubSystem("LREG")
