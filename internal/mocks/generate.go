package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SnapshotClient --dir ../usecase --output usecase --outpkg usecasemock --filename snapshot_client_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name JobScheduler --dir ../usecase --output usecase --outpkg usecasemock --filename job_scheduler_mock.go
