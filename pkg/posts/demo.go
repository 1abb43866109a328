package posts

import "time"

func demoPosts(now time.Time) []*Post {
	ms := func(d time.Duration) int64 {
		return now.Add(-d).UnixNano() / int64(time.Millisecond)
	}

	return []*Post{
		{
			ID:        ms(time.Hour),
			Author:    "Akif Mehmood",
			Text:      "Welcome to SocialHub! This is a demo post. Try creating your own!",
			Image:     "https://avatars.mds.yandex.net/get-mpic/5138384/img_id4799653528162045160.jpeg/orig",
			Likes:     28,
			Timestamp: now.Add(-time.Hour),
			Reactions: map[ReactionKind]int{},
		},
		{
			ID:        ms(30 * time.Minute),
			Author:    "Muzammil Qurban",
			Text:      "Like, edit, delete, search, and filter posts. Dark mode is available too!",
			Image:     "https://resizer.mail.ru/p/7d71d79f-413d-5d14-9cf5-3e7054edccd3/AQABtQN6Z62XEJ7nWFXkDJhp2M-xCTNhobZqjJpdjay5uLDUj_B8cO7VJrLtTwk4q2xp46oyZNJ6VpalxxSsTdebXZM.jpg",
			Likes:     63,
			Timestamp: now.Add(-30 * time.Minute),
			Reactions: map[ReactionKind]int{},
		},
		{
			ID:        ms(3800 * time.Second),
			Author:    "Ak",
			Text:      "Welcome to SocialHub!",
			Image:     "https://img.freepik.com/free-photo/photorealistic-wintertime-scene-with-people-snowboarding_23-2151472636.jpg?semt=ais_hybrid&w=740&q=80",
			Likes:     68,
			Timestamp: now.Add(-3800 * time.Second),
			Reactions: map[ReactionKind]int{},
		},
	}
}
