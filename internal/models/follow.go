package models

// Follow представляет социальную связь "пользователь подписан на тренера".
// Связь не даёт доступа к платному контенту — это только источник ленты.
// На пару (FollowerUID, TrainerUID) существует не более одной записи;
// создание и удаление идемпотентны.
type Follow struct {
	ID          string `json:"id"`           // Уникальный идентификатор связи
	FollowerUID string `json:"follower_uid"` // Кто подписан
	TrainerUID  string `json:"trainer_uid"`  // На кого подписан
}
