package redisimpls

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/report"
	"github.com/spf13/cast"
)

func NewRedisReportStorage(preKey string, redisCli *redis.Client, logger l.Wrapper) report.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "reportStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &reportStorage{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type reportStorage struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
}

func (impl *reportStorage) reportKey(id uint64) string {
	return impl.preKey + ":report:" + strconv.FormatUint(id, 10)
}

func (impl *reportStorage) reportIDsKey() string {
	return impl.preKey + ":reports"
}

func (impl *reportStorage) Save(r *report.Report) error {
	if r == nil {
		return commerr.ErrInvalidArgument
	}

	d, err := json.Marshal(r)
	if err != nil {
		return err
	}

	_, err = impl.redisCli.TxPipelined(context.Background(), func(pipe redis.Pipeliner) error {
		pipe.Set(context.Background(), impl.reportKey(r.ID), d, 0)
		pipe.ZAdd(context.Background(), impl.reportIDsKey(), &redis.Z{
			Score:  float64(r.CreatedAt),
			Member: r.ID,
		})

		return nil
	})
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.UInt64Field("id", r.ID)).Error("save report failed")
	}

	return err
}

func (impl *reportStorage) Load(id uint64) (r *report.Report, err error) {
	d, err := impl.redisCli.Get(context.Background(), impl.reportKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = commerr.ErrNotFound
		}

		return
	}

	r = new(report.Report)

	err = json.Unmarshal(d, r)

	return
}

// List returns report ids ordered by creation time.
func (impl *reportStorage) List() (ids []uint64, err error) {
	members, err := impl.redisCli.ZRange(context.Background(), impl.reportIDsKey(), 0, -1).Result()
	if err != nil {
		return
	}

	ids = make([]uint64, 0, len(members))

	for _, member := range members {
		var id uint64

		id, err = cast.ToUint64E(member)
		if err != nil {
			return
		}

		ids = append(ids, id)
	}

	return
}
