// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./pipeline.go -destination=../mocks/mock_pipeline_repository.go -package=mocks PipelineRepositoryIface
//go:generate mockgen -source=./stage.go -destination=../mocks/mock_stage_repository.go -package=mocks StageRepositoryIface
//go:generate mockgen -source=./card.go -destination=../mocks/mock_card_repository.go -package=mocks CardRepositoryIface
//go:generate mockgen -source=./batch.go -destination=../mocks/mock_batch_repository.go -package=mocks BatchRepositoryIface
//go:generate mockgen -source=./client.go -destination=../mocks/mock_client_repository.go -package=mocks ClientRepositoryIface
//go:generate mockgen -source=./calendar.go -destination=../mocks/mock_calendar_repository.go -package=mocks CalendarRepositoryIface
//go:generate mockgen -source=./activity_log.go -destination=../mocks/mock_activity_log_repository.go -package=mocks ActivityLogRepositoryIface
