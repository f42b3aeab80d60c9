package report

type Storage interface {
	Save(r *Report) error
	Load(id uint64) (*Report, error)
	List() ([]uint64, error)
}
