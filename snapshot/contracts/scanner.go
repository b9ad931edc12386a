package contracts

import "github.com/meysamhadeli/dirsnap/snapshot/models"

type IScanner interface {
	Scan() (*models.Snapshot, error)
	Root() string
}
