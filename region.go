package axiomfs

// Region is the byte region of an image as seen by the file system layer.
// *Image implements it.
// It mainly exists to be able to mock the image in tests.
// Generated mock using mockgen:
//  mockgen -source=region.go -destination=region_mock_test.go -package axiomfs
type Region interface {
	// Name identifies the backing store, e.g. the path of the image file.
	Name() string

	// Bytes returns the whole mutable region. Writes go to the backing store.
	Bytes() []byte
}
