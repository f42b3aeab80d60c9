package fmstorage

import (
	"path/filepath"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libgrowth/report"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func NewFMStorage(root string, storage stg.FileStorage) report.Storage {
	return NewFMStorageEx(root, storage, "reports.json", false)
}

func NewFMStorageEx(root string, storage stg.FileStorage, fileName string, prettySerial bool) report.Storage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmStorageImpl{
		reportStorage: mwf.NewMemWithFile[map[uint64]*report.Report, mwf.Serial, mwf.Lock](
			make(map[uint64]*report.Report), &mwf.JSONSerial{
				MarshalIndent: prettySerial,
			}, &sync.RWMutex{}, filepath.Join(root, fileName), storage),
	}
}

type fmStorageImpl struct {
	reportStorage *mwf.MemWithFile[map[uint64]*report.Report, mwf.Serial, mwf.Lock]
}

func (impl *fmStorageImpl) Save(r *report.Report) error {
	if r == nil {
		return commerr.ErrInvalidArgument
	}

	return impl.reportStorage.Change(func(oldM map[uint64]*report.Report) (newM map[uint64]*report.Report, err error) {
		newM = oldM
		if len(newM) == 0 {
			newM = make(map[uint64]*report.Report)
		}

		newM[r.ID] = r

		return
	})
}

func (impl *fmStorageImpl) Load(id uint64) (r *report.Report, err error) {
	impl.reportStorage.Read(func(m map[uint64]*report.Report) {
		v, ok := m[id]
		if !ok {
			err = commerr.ErrNotFound

			return
		}

		cp := *v
		r = &cp
	})

	return
}

func (impl *fmStorageImpl) List() (ids []uint64, err error) {
	impl.reportStorage.Read(func(m map[uint64]*report.Report) {
		ids = maps.Keys(m)
	})

	slices.Sort(ids)

	return
}
